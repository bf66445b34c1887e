package handler

// --- Request / Response types ---

type registerRequest struct {
	Email          string `json:"email"          validate:"required,email"`
	FullName       string `json:"fullName"       validate:"required,max=100"`
	Password       string `json:"password"       validate:"required,min=8,max=20,letterdigit"`
	PasswordRepeat string `json:"passwordRepeat" validate:"required,eqfield=Password"`
	// Roles is accepted and ignored; public registration always grants USER.
	Roles []string `json:"roles" validate:"omitempty,dive,role"`
}

type createUserRequest struct {
	Email    string   `json:"email"    validate:"required,email"`
	FullName string   `json:"fullName" validate:"required,max=100"`
	Password string   `json:"password" validate:"required,min=8,max=20,letterdigit"`
	Verified bool     `json:"verified"`
	Banned   bool     `json:"banned"`
	Roles    []string `json:"roles"    validate:"omitempty,dive,role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FullName  string   `json:"fullName"`
	Verified  bool     `json:"verified"`
	Banned    bool     `json:"banned"`
	Roles     []string `json:"roles"`
	CreatedAt string   `json:"createdAt"`
}

type loginUser struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"fullName"`
	Roles    []string `json:"roles"`
}

type loginResponse struct {
	User         loginUser `json:"user"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresIn    int64     `json:"expiresIn"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse and validationErrorResponse document the envelope rendered by
// the HTTP error handler.
type errorResponse struct {
	Message    string `json:"message"`
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
}

type validationErrorResponse struct {
	Message    []string `json:"message"`
	Error      string   `json:"error"`
	StatusCode int      `json:"statusCode"`
}
