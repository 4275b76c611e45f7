package main

// General API documentation for swaggo. Run `swag init -g cmd/lmstudioapi/docs.go` to generate docs.
//
// @title           LMStudioAPI
// @version         1.0
// @description     HTTP bridge for LM Studio: chat completions and model management.
//
// @contact.name   LMStudioAPI maintainers
// @contact.url    https://github.com/ErrayDineri/LMStudioAPI
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
