package db

// GlossaryItem is a persisted glossary entry.
// It is never serialized directly; handlers expose glossary.Entry instead.
type GlossaryItem struct {
	ID         int64   `gorm:"primaryKey;autoIncrement"`
	Term       string  `gorm:"not null;index"`
	Definition string  `gorm:"not null"`
	Secret     *string `gorm:"column:secret"`
	Version    int64   `gorm:"not null;default:1"`
}

// TableName binds GlossaryItem to its table.
func (GlossaryItem) TableName() string {
	return "glossary_items"
}
