package testutil

// libraryData is one client library entry.
type libraryData struct {
	Name string `yaml:"name,omitempty"`
	URL  string `yaml:"url,omitempty"`
	Type string `yaml:"type,omitempty"`
}

type attributeData struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type,omitempty"`
	Required bool   `yaml:"required,omitempty"`
	Default  string `yaml:"default,omitempty"`
}

type eventData struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type dependencyData struct {
	Resource string `yaml:"resource"`
	Type     string `yaml:"type,omitempty"`
}

// markupData is the YAML document of a markup source. Empty fields are left out.
type markupData struct {
	Description    string           `yaml:"description,omitempty"`
	Access         string           `yaml:"access,omitempty"`
	Authentication string           `yaml:"authentication,omitempty"`
	Extends        string           `yaml:"extends,omitempty"`
	Extensible     bool             `yaml:"extensible,omitempty"`
	Abstract       bool             `yaml:"abstract,omitempty"`
	Implements     []string         `yaml:"implements,omitempty"`
	Attributes     []attributeData  `yaml:"attributes,omitempty"`
	Events         []eventData      `yaml:"events,omitempty"`
	Components     []string         `yaml:"components,omitempty"`
	Dependencies   []dependencyData `yaml:"dependencies,omitempty"`
	Libraries      []libraryData    `yaml:"libraries,omitempty"`
}

// MarkupOption configures a markup source during builder setup.
type MarkupOption func(*markupData)

// Description sets the description.
func Description(desc string) MarkupOption {
	return func(m *markupData) { m.Description = desc }
}

// Access sets the access level (GLOBAL, PUBLIC, INTERNAL, PRIVATE).
func Access(level string) MarkupOption {
	return func(m *markupData) { m.Access = level }
}

// Unauthenticated opens the definition to anonymous requests.
func Unauthenticated() MarkupOption {
	return func(m *markupData) { m.Authentication = "UNAUTHENTICATED" }
}

// Extends names the supertype.
func Extends(super string) MarkupOption {
	return func(m *markupData) { m.Extends = super }
}

// Extensible allows other definitions to extend this one.
func Extensible() MarkupOption {
	return func(m *markupData) { m.Extensible = true }
}

// Abstract forbids using the definition as an inner component.
func Abstract() MarkupOption {
	return func(m *markupData) { m.Abstract = true }
}

// Implements adds implemented interfaces.
func Implements(interfaces ...string) MarkupOption {
	return func(m *markupData) { m.Implements = append(m.Implements, interfaces...) }
}

// Components adds inner components.
func Components(names ...string) MarkupOption {
	return func(m *markupData) { m.Components = append(m.Components, names...) }
}

// Attribute declares an attribute of the given type ("" means String).
func Attribute(name, typ string) MarkupOption {
	return func(m *markupData) { m.Attributes = append(m.Attributes, attributeData{Name: name, Type: typ}) }
}

// RequiredAttribute declares a required attribute.
func RequiredAttribute(name, typ string) MarkupOption {
	return func(m *markupData) {
		m.Attributes = append(m.Attributes, attributeData{Name: name, Type: typ, Required: true})
	}
}

// Event registers an event the definition fires.
func Event(name, eventType string) MarkupOption {
	return func(m *markupData) { m.Events = append(m.Events, eventData{Name: name, Type: eventType}) }
}

// DependsOn adds an explicit dependency. typ "" means COMPONENT.
func DependsOn(resource, typ string) MarkupOption {
	return func(m *markupData) {
		m.Dependencies = append(m.Dependencies, dependencyData{Resource: resource, Type: typ})
	}
}

// Library declares a client library.
func Library(name, url, typ string) MarkupOption {
	return func(m *markupData) { m.Libraries = append(m.Libraries, libraryData{Name: name, URL: url, Type: typ}) }
}
