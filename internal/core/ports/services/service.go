package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	AccessToken  AccessTokenSvcFacade
	RefreshToken RefreshTokenSvcFacade
	Identity     IdentitySvcFacade
	Auth         AuthSvcFacade
	GoogleOAuth  GoogleOAuthSvcFacade
	Bookmark     BookmarkSvcFacade
}
