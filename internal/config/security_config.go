package config

import "strconv"

type SecurityConfig interface {
	GetJWTSecret() string
	GetPasswordMinLength() int
	GetPasswordRequireUppercase() bool
	GetPasswordRequireNumber() bool
	GetPasswordRequireSpecialChar() bool
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetJWTSecret() string {
	return GetEnv("JWT_SECRET", "")
}

func (Security) GetPasswordMinLength() int {
	length, err := strconv.Atoi(GetEnv("PASSWORD_MIN_LENGTH", "8"))
	if err != nil || length < 1 {
		return 8
	}
	return length
}

func (Security) GetPasswordRequireUppercase() bool {
	return getBool("PASSWORD_REQUIRE_UPPERCASE", true)
}

func (Security) GetPasswordRequireNumber() bool {
	return getBool("PASSWORD_REQUIRE_NUMBER", true)
}

func (Security) GetPasswordRequireSpecialChar() bool {
	return getBool("PASSWORD_REQUIRE_SPECIAL_CHAR", true)
}

func getBool(envVar string, defaultValue bool) bool {
	value, err := strconv.ParseBool(GetEnv(envVar, strconv.FormatBool(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}
