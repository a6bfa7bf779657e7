package models

import "gorm.io/gorm"

// AutoMigrate creates users, articles and likes together with the unique
// (user_id, article_id) index and both foreign keys.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Article{}, &Like{})
}
