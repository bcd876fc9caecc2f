package credstore_test

import (
	"fmt"

	"github.com/averath/reqops/credstore"
)

func ExampleSave() {
	store := credstore.NewMemoryStore()

	_ = credstore.Save(store, credstore.Credentials{
		Token:     "abc123",
		TokenType: "Bearer",
		Tenant:    "acme",
	})

	creds, ok, _ := credstore.Load(store)
	fmt.Println("Found:", ok)
	fmt.Println("Authorization:", creds.AuthorizationValue())
	// Output:
	// Found: true
	// Authorization: Bearer abc123
}

func ExampleClearSession() {
	store := credstore.NewMemoryStore()
	_ = credstore.Save(store, credstore.Credentials{
		Token:     "abc123",
		TokenType: "Bearer",
		Tenant:    "acme",
	})

	// Clearing the session preserves the client identifier
	_ = credstore.ClearSession(store)

	_, ok, _ := credstore.Load(store)
	fmt.Println("Session present:", ok)

	client, _ := credstore.ClientID(store)
	fmt.Println("Client:", client)
	// Output:
	// Session present: false
	// Client: acme
}

func ExampleCredentials_AuthorizationValue() {
	full := credstore.Credentials{Token: "abc", TokenType: "Bearer"}
	fmt.Printf("Full: %q\n", full.AuthorizationValue())

	// A record missing either part yields "" so the header is omitted
	partial := credstore.Credentials{Token: "abc"}
	fmt.Printf("Partial: %q\n", partial.AuthorizationValue())
	// Output:
	// Full: "Bearer abc"
	// Partial: ""
}
