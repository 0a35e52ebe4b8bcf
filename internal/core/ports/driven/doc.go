// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - AnnotationStore: Annotated slide and collection persistence
//   - ConfigStore: Application configuration
//   - PromptStore: LLM prompt templates
//   - Tokenizer: Token counting for context budgets
//
// # Optional Interfaces
//
// These can be nil; the commands that need them report the missing service:
//
//   - LLMService: Annotation, outline generation and selection
//   - PresentationOpener: Sessions against the presentation service
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
