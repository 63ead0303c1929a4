package validation

import (
	"regexp"
	"strings"
)

var (
	upperRe  = regexp.MustCompile(`[A-Z]`)
	lowerRe  = regexp.MustCompile(`[a-z]`)
	digitRe  = regexp.MustCompile(`[0-9]`)
	symbolRe = regexp.MustCompile(`[^A-Za-z0-9]`)
	alphaRe  = regexp.MustCompile(`^[A-Za-z]+$`)
	numRe    = regexp.MustCompile(`^[0-9]+$`)
)

// RegisterChain validates principal registration payloads. The password
// section deliberately keeps some rules that overlap (the purely-alphabetic
// and purely-numeric checks alongside the character-class checks): each is
// independently triggerable and clients depend on the distinct messages.
func RegisterChain() Chain {
	return Chain{
		Name: "register",
		Rules: []Rule{
			{Field: "fullName", Message: "Full Name is required", Check: required()},
			{Field: "fullName", Message: "Full Name must be between 4 and 50 characters", Check: lengthBetween(4, 50)},

			{Field: "email", Message: "Email is required", Check: required()},
			{Field: "email", Message: "Invalid email format", Check: optional(func(v string, _ bool) bool {
				return isWellFormedEmail(v)
			})},
			{Field: "email", Message: "Email is too long (max 254 characters)", Check: maxLength(254)},
			{Field: "email", Message: "Email domain not allowed", Check: optional(func(v string, _ bool) bool {
				return domainAllowed(v)
			})},
			{Field: "email", Message: "Temporary email addresses are not allowed", Check: optional(func(v string, _ bool) bool {
				return !domainDisposable(v)
			})},

			{Field: "password", Message: "Password is required", Check: required()},
			{Field: "password", Message: "Password must be between 8 and 128 characters long", Check: lengthBetween(8, 128)},
			{Field: "password", Message: "Password must contain at least one number or special character", Check: optional(func(v string, _ bool) bool {
				return !alphaRe.MatchString(strings.TrimSpace(v))
			})},
			{Field: "password", Message: "Password cannot contain only numbers", Check: optional(func(v string, _ bool) bool {
				return !numRe.MatchString(strings.TrimSpace(v))
			})},
			{Field: "password", Message: "Password must contain at least one uppercase letter", Check: optional(func(v string, _ bool) bool {
				return upperRe.MatchString(v)
			})},
			{Field: "password", Message: "Password must contain at least one lowercase letter", Check: optional(func(v string, _ bool) bool {
				return lowerRe.MatchString(v)
			})},
			{Field: "password", Message: "Password must contain at least one number", Check: optional(func(v string, _ bool) bool {
				return digitRe.MatchString(v)
			})},
			{Field: "password", Message: "Password must contain at least one special character", Check: optional(func(v string, _ bool) bool {
				return symbolRe.MatchString(v)
			})},
		},
	}
}

// ClothChain validates catalog item creation fields; the image file itself
// goes through CheckUpload.
func ClothChain() Chain {
	return Chain{
		Name: "clothCreate",
		Rules: []Rule{
			{Field: "name", Message: "Cloth name is required", Check: required()},
			{Field: "name", Message: "Cloth name must be between 2 and 100 characters", Check: lengthBetween(2, 100)},
			{Field: "description", Message: "Cloth description is required", Check: required()},
			{Field: "description", Message: "Cloth description must be between 10 and 2000 characters", Check: lengthBetween(10, 2000)},
			{Field: "price", Message: "Price is required", Check: required()},
			{Field: "price", Message: "Price must be greater than 0", Check: positiveNumber()},
			{Field: "size", Message: "Size is required", Check: required()},
			{Field: "color", Message: "Color is required", Check: required()},
		},
	}
}

// VideoChain validates promotional video creation fields.
func VideoChain() Chain {
	return Chain{
		Name: "videoCreate",
		Rules: []Rule{
			{Field: "title", Message: "Video title is required", Check: required()},
			{Field: "title", Message: "Video title must be between 2 and 100 characters", Check: lengthBetween(2, 100)},
			{Field: "productId", Message: "Invalid Product ID format", Check: optional(objectIDHex())},
			{Field: "price", Message: "Price must be greater than 0", Check: positiveNumber()},
			{Field: "isActive", Message: "isActive must be a boolean", Check: optional(boolean())},
		},
	}
}
