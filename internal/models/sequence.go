package models

// SequenceCounter backs the identifier allocator. One row per entity kind,
// incremented atomically inside the transaction that creates the record.
type SequenceCounter struct {
	BaseModel
	Kind  string `gorm:"uniqueIndex;size:30;not null" json:"kind"`
	Value int64  `gorm:"not null" json:"value"`
}
