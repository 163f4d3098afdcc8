/*
Package authsdk provides a client SDK for the Quill blog service.

# Overview

The SDK wraps the email/password authentication endpoints and the token
rotation endpoints. It offers unauthenticated calls through SDKClient and
authenticated calls through Session, which rotates tokens automatically.

	client := authsdk.NewSDKClient("https://blog.example.com")

	// Create an account, the response already carries a token pair
	session, err := client.Register(ctx, authsdk.RegisterRequest{
		Nickname: "writer",
		Email:    "writer@example.com",
		Password: "pw12",
	})

	// Or log in with existing credentials (sent as HTTP Basic auth)
	session, err = client.Login(ctx, "writer@example.com", "pw12")

	me, err := session.Me(ctx)

# Tokens

Access tokens live for five minutes and refresh tokens for an hour. Only a
refresh token can be exchanged at /auth/token/access or /auth/token/refresh.
A Session reads the exp claim of each token and rotates shortly before
expiry. When the refresh token itself is about to expire it is renewed first,
so a Session that is used at least once an hour never needs the password
again. Once both tokens have expired, Session methods return
ErrSessionExpired.

# Error Handling

Failed calls return *APIError with the HTTP status and the error code, or
*ValidationError for a register body that fails validation:

	_, err := client.LoginWithEmail(ctx, email, password)
	if authsdk.HasCode(err, authsdk.ErrorCodeInvalidCredentials) {
		// wrong email or password
	}

# Thread Safety

Sessions are safe for concurrent use. Token rotation happens under a write
lock so concurrent callers share a single rotation.
*/
package authsdk
