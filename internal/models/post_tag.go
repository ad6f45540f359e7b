package models

// PostTag links a Post to a Tag. Rows are only ever inserted or deleted.
type PostTag struct {
	PostID uint `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	TagID  uint `gorm:"primaryKey;autoIncrement:false;index" json:"tag_id"`

	Post *Post `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Tag  *Tag  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}

func (PostTag) TableName() string {
	return "post_tags"
}
