// @title           notes-api
// @version         1.0
// @description     Personal notes REST service. Authenticate with a bearer token from /auth/login or /auth/register.
// @BasePath        /
// @securityDefinitions.apikey BearerToken
// @in              header
// @name            Authorization
// @description     Type "Bearer" followed by a space and your token.
package api
