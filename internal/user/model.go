package user

type User struct {
	ID       string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username string `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	Password string `gorm:"type:varchar(72);not null" json:"-"`
	Role     string `gorm:"type:varchar(16);not null" json:"role"`
}

func (User) TableName() string { return "user" }
