package model

type User struct {
	Username     string `json:"username"`
	Admin        bool   `json:"admin"`
	RestrictLang string `json:"restrict_lang,omitempty"`
	RestrictTag  string `json:"restrict_tag,omitempty"`
}

type UserSigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
