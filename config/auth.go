package config

import "github.com/spf13/viper"

// Auth auth config struct
type Auth struct {
	JWT    *JWT
	Cookie *Cookie
	Admin  *Admin
}

// getAuth returns the auth config.
func getAuth(v *viper.Viper) *Auth {
	return &Auth{
		JWT:    getJWT(v),
		Cookie: getCookie(v),
		Admin:  getAdmin(v),
	}
}

// JWT jwt config struct. Expire is in hours.
type JWT struct {
	Secret string
	Expire int
}

// getJWT returns the jwt config.
func getJWT(v *viper.Viper) *JWT {
	return &JWT{
		Secret: v.GetString("auth.jwt.secret"),
		Expire: v.GetInt("auth.jwt.expire"),
	}
}

// Cookie session cookie config struct
type Cookie struct {
	Name   string
	Secure bool
}

func getCookie(v *viper.Viper) *Cookie {
	return &Cookie{
		Name:   v.GetString("auth.cookie.name"),
		Secure: v.GetBool("auth.cookie.secure"),
	}
}

// Admin is the bootstrap administrator created when none exists.
type Admin struct {
	Username string
	Password string
}

func getAdmin(v *viper.Viper) *Admin {
	return &Admin{
		Username: v.GetString("auth.admin.username"),
		Password: v.GetString("auth.admin.password"),
	}
}
