// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Loader / LoaderRegistry: Turns a path or URL into document pages
//   - Chunker: Splits pages into overlapping chunks
//   - EmbeddingService: Generates vector embeddings
//   - VectorIndex / IndexFactory: Stores and searches embeddings
//   - IndexCache: Persists built indexes keyed on document identity
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Answer synthesis. Without it, ask is disabled.
//   - HistoryStore: Question/answer logging.
//   - ConfigStore: Application configuration.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or loader package
package driven
