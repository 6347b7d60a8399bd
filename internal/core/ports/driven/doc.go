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
//   - Tokenizer: Morphological analysis of a selection (kagome)
//   - Dictionary: Term lookup (Jisho HTTP, SQLite, memory)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - DictionaryStore: A writable Dictionary. Only needed to import an
//     offline dictionary.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
