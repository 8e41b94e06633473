package webpath

const (
	Home   = "/"
	Signup = "/signup"
	Login  = "/login"
	Logout = "/logout"
	Secret = "/secret"
)

func Path() map[string]string {
	return map[string]string{
		"Home":   Home,
		"SignUp": Signup,
		"LogIn":  Login,
		"LogOut": Logout,
		"Secret": Secret,
	}
}
