package vec

// Vec3 представляет трехмерный вектор с целочисленными координатами
type Vec3 struct {
	X int
	Y int
	Z int
}

// Add возвращает сумму векторов
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Offset сдвигает вектор на dx, dy, dz
func (v Vec3) Offset(dx, dy, dz int) Vec3 {
	return Vec3{X: v.X + dx, Y: v.Y + dy, Z: v.Z + dz}
}

// Horizontal отбрасывает высоту
func (v Vec3) Horizontal() Vec2 {
	return Vec2{X: v.X, Z: v.Z}
}

// ChunkCoords возвращает координаты чанка, содержащего точку
func (v Vec3) ChunkCoords() Vec2 {
	return v.Horizontal().ToChunkCoords()
}
