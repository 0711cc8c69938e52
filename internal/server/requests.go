package server

import (
	"scribe/internal/models"
	"scribe/internal/service"
	"scribe/internal/validation"
)

type registerRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=1,max=50"`
	Email    string `json:"email" form:"email" validate:"required,email,max=120"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

func (r registerRequest) input() service.RegisterInput {
	return service.RegisterInput{Username: r.Username, Email: r.Email, Password: r.Password}
}

// tokenRequest is the OAuth2 password form. The username field carries the email address.
type tokenRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// TokenResponse is returned by the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// updateUserRequest is a partial update. A JSON null for username or email
// counts as absent; a null image_file resets the picture to the default.
type updateUserRequest struct {
	Username  *string               `json:"username" validate:"omitnil,min=1,max=50"`
	Email     *string               `json:"email" validate:"omitnil,email,max=120"`
	ImageFile models.NullableString `json:"image_file" validate:"-"`
}

func (r updateUserRequest) validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.ImageFile.Value != nil {
		return validation.Var("image_file", *r.ImageFile.Value, "min=1,max=200")
	}
	return nil
}

func (r updateUserRequest) input() service.UpdateUserInput {
	return service.UpdateUserInput{Username: r.Username, Email: r.Email, ImageFile: r.ImageFile}
}

type postRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=100"`
	Content string `json:"content" validate:"required,min=1"`
}

type postPatchRequest struct {
	Title   *string `json:"title" validate:"omitnil,min=1,max=100"`
	Content *string `json:"content" validate:"omitnil,min=1"`
}
