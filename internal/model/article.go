package model

import "time"

type Article struct {
	UUID         string    `db:"uuid" json:"uuid"`
	OwnerUUID    *string   `db:"owner_uuid" json:"owner_uuid,omitempty"`
	OwnerName    string    `db:"owner_name" json:"owner_name,omitempty"`
	Title        string    `db:"title" json:"title"`
	Slug         string    `db:"slug" json:"slug"`
	Description  string    `db:"description" json:"description"`
	ImagePath    string    `db:"image_path" json:"image_path,omitempty"`
	SourceLink   string    `db:"source_link" json:"source_link,omitempty"`
	TotalVotes   int       `db:"total_votes" json:"total_votes"`
	IsPrivate    bool      `db:"is_private" json:"is_private"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`

	// Теги загружаются отдельным запросом, в таблице articles их нет
	Tags []Tag `db:"-" json:"tags,omitempty"`
}

type Tag struct {
	UUID      string    `db:"uuid" json:"uuid"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Review struct {
	UUID        string    `db:"uuid" json:"uuid"`
	ArticleUUID string    `db:"article_uuid" json:"article_uuid"`
	OwnerUUID   *string   `db:"owner_uuid" json:"owner_uuid,omitempty"`
	OwnerName   string    `db:"owner_name" json:"owner_name,omitempty"`
	Body        string    `db:"body" json:"body"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ArticleView : статья вместе с производными данными для отображения
type ArticleView struct {
	Article         *Article `json:"article"`
	DescriptionHTML string   `json:"description_html,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
	ReviewCount     int      `json:"review_count"`
	Reviews         []Review `json:"reviews,omitempty"`
}
