package render

// Renderer writes the result of a use case
type Renderer[T any] interface {
	Render(result T) error
}
