/*
Package dsl builds tour definitions in Go instead of Markdown or JSON files.

It is handy for tests, for tours generated from application state, and for
hosts that want their tours type-checked.

	b := dsl.New()
	b.Add("onboarding").
		Title("Welcome").
		Light().
		Step("#search", "Search everything from here.").
		Step(".profile", "Your profile lives here.")

	loader, err := b.Build()
	// guide, _ := waypoint.New(env, factory, waypoint.WithLoader(loader))
*/
package dsl
