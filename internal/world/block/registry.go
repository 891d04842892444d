package block

import "sync"

// Properties описывает свойства типа блока, важные для генерации
type Properties struct {
	Name  string
	Solid bool
}

var (
	registryMu sync.RWMutex
	registry   = make(map[BlockID]Properties)
)

// Register добавляет тип блока в регистр
func Register(id BlockID, props Properties) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[id] = props
}

// Get возвращает свойства для указанного ID
func Get(id BlockID) (Properties, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	props, exists := registry[id]
	return props, exists
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func IsValidBlockID(id BlockID) bool {
	_, exists := Get(id)
	return exists
}

// Name возвращает имя блока или "unknown"
func Name(id BlockID) string {
	if props, ok := Get(id); ok {
		return props.Name
	}
	return "unknown"
}

// IsSolid сообщает, является ли блок твёрдым. Неизвестные блоки считаются твёрдыми.
func IsSolid(id BlockID) bool {
	if props, ok := Get(id); ok {
		return props.Solid
	}
	return true
}

// BlockID представляет идентификатор блока
type BlockID uint16

// Константы ID блоков
const (
	// Базовые типы блоков
	AirBlockID               BlockID = iota // 0
	StoneBlockID                            // 1
	CobblestoneBlockID                      // 2
	MossyCobblestoneBlockID                 // 3
	StoneBrickBlockID                       // 4
	MossyStoneBrickBlockID                  // 5
	CrackedStoneBrickBlockID                // 6
	GravelBlockID                           // 7 - приподнятый пол комнаты
	LavaBlockID                             // 8 - текущая лава

	// Декоративные блоки (начиная с 100)
	PumpkinBlockID    BlockID = 100
	LitPumpkinBlockID BlockID = 101

	// Блоки-ловушки с чешуйницей (начиная с 200)
	InfestedStoneBlockID             BlockID = 200
	InfestedCobblestoneBlockID       BlockID = 201
	InfestedStoneBrickBlockID        BlockID = 202
	InfestedMossyStoneBrickBlockID   BlockID = 203
	InfestedCrackedStoneBrickBlockID BlockID = 204

	// Специальные блоки (начиная с 1000)
	SpawnerBlockID BlockID = 1000
)

func init() {
	Register(AirBlockID, Properties{Name: "air"})
	Register(StoneBlockID, Properties{Name: "stone", Solid: true})
	Register(CobblestoneBlockID, Properties{Name: "cobblestone", Solid: true})
	Register(MossyCobblestoneBlockID, Properties{Name: "mossy_cobblestone", Solid: true})
	Register(StoneBrickBlockID, Properties{Name: "stonebrick", Solid: true})
	Register(MossyStoneBrickBlockID, Properties{Name: "mossy_stonebrick", Solid: true})
	Register(CrackedStoneBrickBlockID, Properties{Name: "cracked_stonebrick", Solid: true})
	Register(GravelBlockID, Properties{Name: "gravel", Solid: true})
	Register(LavaBlockID, Properties{Name: "flowing_lava"})
	Register(PumpkinBlockID, Properties{Name: "pumpkin", Solid: true})
	Register(LitPumpkinBlockID, Properties{Name: "lit_pumpkin", Solid: true})
	Register(InfestedStoneBlockID, Properties{Name: "infested_stone", Solid: true})
	Register(InfestedCobblestoneBlockID, Properties{Name: "infested_cobblestone", Solid: true})
	Register(InfestedStoneBrickBlockID, Properties{Name: "infested_stonebrick", Solid: true})
	Register(InfestedMossyStoneBrickBlockID, Properties{Name: "infested_mossy_stonebrick", Solid: true})
	Register(InfestedCrackedStoneBrickBlockID, Properties{Name: "infested_cracked_stonebrick", Solid: true})
	Register(SpawnerBlockID, Properties{Name: "spawner", Solid: true})
}
