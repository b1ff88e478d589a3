package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           ucid API
// @version         1.0
// @description     HTTP API for managing a UCI chess engine process.
//
// @contact.name   ucid maintainers
// @contact.url    https://github.com/your-org/ucid
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
