package models

import "time"

type Article struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Preview   string    `gorm:"size:512" json:"preview"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 只有预加载时才有值
	Likes []Like `gorm:"foreignKey:ArticleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"likes,omitempty"`
}

// LikeCount: 已加载的点赞记录数
func (a *Article) LikeCount() int {
	return len(a.Likes)
}
