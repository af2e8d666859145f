package requestresponse

import "github.com/Akineyshen/BlogStudentsBUT/internal/model"

// ProfilePageResponse : страница списка профилей
type ProfilePageResponse struct {
	Response struct {
		Profiles   []model.Profile `json:"profiles"`
		Page       int             `json:"page" example:"1"`
		PageSize   int             `json:"page_size" example:"6"`
		TotalItems int             `json:"total_items" example:"30"`
		TotalPages int             `json:"total_pages" example:"5"`
		Window     []int           `json:"window"`
	} `json:"response"`
}

// ProfileResponse : профиль для публичной страницы
type ProfileResponse struct {
	Response *model.ProfileView `json:"response"`
}

// AccountResponse : профиль текущего пользователя
type AccountResponse struct {
	Response *model.Profile `json:"response"`
}

// UpdateProfileRequest : тело запроса на обновление профиля
type UpdateProfileRequest struct {
	Name      string `json:"name" example:"Jan Kowalski"`
	Email     string `json:"email" example:"jan@example.com"`
	Username  string `json:"username" example:"jankowalski"`
	Intro     string `json:"intro" example:"Student informatyki"`
	Bio       string `json:"bio" example:"Piszę o Go i nie tylko"`
	ImagePath string `json:"image_path,omitempty" example:"profiles/91bc.png"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// SkillRequest : название навыка
type SkillRequest struct {
	Name string `json:"name" example:"PostgreSQL"`
}

// SkillResponse : добавленный навык
type SkillResponse struct {
	Response *model.Skill `json:"response"`
}

// UploadURLResponse : presigned URL для загрузки изображения
type UploadURLResponse struct {
	Response struct {
		UploadURL string `json:"upload_url"`
		ObjectKey string `json:"object_key" example:"profiles/91bc.png"`
	} `json:"response"`
}
