package models

import "time"

// Like 表示用户对文章的点赞记录。同一 (user, article) 最多一行，
// 由唯一索引和外键约束保证，应用层不做先查后插
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_article" json:"user_id"`
	ArticleID uint      `gorm:"not null;uniqueIndex:idx_likes_user_article;index" json:"article_id"`
	CreatedAt time.Time `json:"created_at"`

	User    *User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Article *Article `gorm:"foreignKey:ArticleID" json:"-"`
}
