// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegisterReq represents the form body for the POST /register endpoint.
// The registration form posts url-encoded fields; the four required ones are
// enforced by Gin's binding tags, the rest are optional profile fields.
type RegisterReq struct {
	FirstName string `form:"first_name" binding:"required"`
	LastName  string `form:"last_name" binding:"required"`
	Email     string `form:"email" binding:"required,email"`
	Password  string `form:"password" binding:"required"`
	Age       *int   `form:"age"`
	Country   string `form:"country"`
	Gender    string `form:"gender"`
}
