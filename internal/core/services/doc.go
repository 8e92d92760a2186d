// Package services implements the driving port interfaces.
// Services contain the core logic of each MCP operation and orchestrate
// calls to the driven SearchEngine port.
//
// Services are pure Go with no transport or client dependencies.
package services
