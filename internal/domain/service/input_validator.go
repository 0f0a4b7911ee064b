package service

// InputValidator checks struct-tag rules on user payloads.
type InputValidator interface {
	Validate(i any) error
}
