package requestresponse

import "github.com/Akineyshen/BlogStudentsBUT/internal/model"

// ArticlePageResponse : страница списка статей.
// Window содержит номера страниц для блока навигации.
type ArticlePageResponse struct {
	Response struct {
		Articles   []model.Article `json:"articles"`
		Page       int             `json:"page" example:"2"`
		PageSize   int             `json:"page_size" example:"6"`
		TotalItems int             `json:"total_items" example:"23"`
		TotalPages int             `json:"total_pages" example:"4"`
		Window     []int           `json:"window"`
	} `json:"response"`
}

// ArticleResponse : статья со всеми данными для отображения
type ArticleResponse struct {
	Response *model.ArticleView `json:"response"`
}

// CreateArticleRequest : тело запроса на создание статьи
type CreateArticleRequest struct {
	Title       string   `json:"title" example:"Wprowadzenie do Go"`
	Description string   `json:"description" example:"# Treść artykułu w markdown"`
	SourceLink  string   `json:"source_link,omitempty" example:"https://go.dev"`
	ImagePath   string   `json:"image_path,omitempty" example:"articles/3f2a.png"`
	IsPrivate   bool     `json:"is_private" example:"false"`
	Password    string   `json:"password,omitempty" example:"sekret123"`
	Tags        []string `json:"tags"`
}

// ArticlePasswordRequest : пароль приватной статьи
type ArticlePasswordRequest struct {
	Password string `json:"password" example:"sekret123"`
}

// ArticleUnlockedResponse : ответ на верный пароль
type ArticleUnlockedResponse struct {
	Response struct {
		Unlocked bool `json:"unlocked" example:"true"`
	} `json:"response"`
}

// ReviewRequest : тело комментария
type ReviewRequest struct {
	Body string `json:"body" example:"Świetny artykuł!"`
}

// ReviewResponse : созданный комментарий
type ReviewResponse struct {
	Response *model.Review `json:"response"`
}

// TagListResponse : все теги
type TagListResponse struct {
	Response []model.Tag `json:"response"`
}
