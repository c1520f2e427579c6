package schemas

type RegisterRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Confirmation string `json:"confirmation"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type ChangePasswordRequest struct {
	NewPassword  string `json:"newPassword"`
	Confirmation string `json:"confirmation"`
}
