package testutil

// WithStandardBundles adds a small "ui" namespace:
//
//	ui:shell (application)
//	  ├── ui:card extends ui:panel (extensible, abstract)
//	  │     └── ui:icon
//	  └── ui:button (controller, helper, style; fires ui:clicked)
//	        └── ui:icon
func (b *Builder) WithStandardBundles() *Builder {
	return b.
		WithApplication("ui", "shell",
			Description("Application shell"),
			Components("ui:card", "ui:button"),
			Library("", "/assets/theme.css", "css")).
		WithComponent("ui", "panel",
			Extensible(), Abstract(),
			Attribute("title", "String")).
		WithComponent("ui", "card",
			Extends("ui:panel"),
			Components("ui:icon")).
		WithComponent("ui", "button",
			RequiredAttribute("label", "String"),
			Event("press", "ui:clicked"),
			Components("ui:icon"),
			Library("jquery", "", "")).
		WithController("ui", "button", "({ press: function(cmp) { cmp.fire(); } })").
		WithHelper("ui", "button", "({ format: function(s) { return s; } })").
		WithStyle("ui", "button", ".THIS { color: red; }").
		WithComponent("ui", "icon", Attribute("size", "Integer")).
		WithEvent("ui", "clicked")
}

// WithCycle adds ui:a and ui:b containing each other.
func (b *Builder) WithCycle() *Builder {
	return b.
		WithComponent("ui", "a", Components("ui:b")).
		WithComponent("ui", "b", Components("ui:a"))
}
