// Package services implements the core business logic.
//
// Services:
//   - Ingestor: batched, rate-limit-adaptive embedding of chunk sequences
//   - AssistantService: document load/add/ask/info facade over the ports
package services
