// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The assembly pipeline is built from small services that are wired
// together in cmd/deckforge:
//
//   - Budgeter: bounds prompt payloads to a model's context window
//   - Annotator: summarise, categorise and tag slides, then persist them
//   - Retriever: look up stored slides by category and tags
//   - Selector: ask the LLM for the best candidate of a category
//   - Transplanter: rebuild a slide element by element elsewhere
//   - Outliner and Assembler: plan and build a new presentation
package services
