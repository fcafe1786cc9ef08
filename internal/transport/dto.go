package transport

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type RegisterRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 1024)),
	)
}

type CreateSnakeRequest struct {
	Species     string `form:"snake_species"`
	Description string `form:"snake_description"`
	Sex         string `form:"snake_sex"`
}

func (r CreateSnakeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Species, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 255)),
		validation.Field(&r.Sex, validation.Length(0, 255)),
	)
}

type PatchSnakeRequest struct {
	Species     *string `json:"snake_species"`
	Description *string `json:"snake_description"`
	Sex         *string `json:"snake_sex"`
}

func (r PatchSnakeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Species, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 255)),
		validation.Field(&r.Sex, validation.Length(0, 255)),
	)
}

type CreateMessageRequest struct {
	Sender   string     `json:"sender"`
	Body     string     `json:"body"`
	Title    string     `json:"title"`
	Datetime *time.Time `json:"datetime"`
}

func (r CreateMessageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Sender, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Body, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Title, validation.Length(0, 255)),
	)
}

type UploadResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
}

type SearchResponse struct {
	Total int64 `json:"total"`
	Items any   `json:"items"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Disabled bool   `json:"disabled"`
}
