package model

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// 身份由上游认证服务签发，这里只消费 JWT 中携带的 (user_id, role)。
