package model

import "time"

type Profile struct {
	UUID      string    `db:"uuid" json:"uuid"`
	UserUUID  *string   `db:"user_uuid" json:"user_uuid,omitempty"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Username  string    `db:"username" json:"username"`
	Intro     string    `db:"intro" json:"intro,omitempty"`
	Bio       string    `db:"bio" json:"bio,omitempty"`
	ImagePath string    `db:"image_path" json:"image_path,omitempty"`
	Facebook  string    `db:"facebook" json:"facebook,omitempty"`
	Instagram string    `db:"instagram" json:"instagram,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	Skills []Skill `db:"-" json:"skills,omitempty"`
}

type Skill struct {
	UUID      string    `db:"uuid" json:"uuid"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ProfileView : профиль с разбивкой навыков для отображения.
// MainSkills — первые навыки (выводятся крупно), OtherSkills — остальные;
// границы среза задаются сервисом явно.
type ProfileView struct {
	Profile     *Profile `json:"profile"`
	ImageURL    string   `json:"image_url,omitempty"`
	MainSkills  []Skill  `json:"main_skills"`
	OtherSkills []Skill  `json:"other_skills"`
}

type Message struct {
	UUID          string    `db:"uuid" json:"uuid"`
	SenderUUID    *string   `db:"sender_uuid" json:"sender_uuid,omitempty"`
	RecipientUUID string    `db:"recipient_uuid" json:"recipient_uuid"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email"`
	Subject       string    `db:"subject" json:"subject"`
	Body          string    `db:"body" json:"body"`
	IsRead        bool      `db:"is_read" json:"is_read"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
