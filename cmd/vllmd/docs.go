package main

// General API documentation for swaggo. Run `make swagger-gen` to regenerate internal/apidocs.
//
// @title           vllmd API
// @version         1.0
// @description     Control plane that loads, unloads and proxies vLLM inference backends.
//
// @contact.name   vllmd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
