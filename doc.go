// Package demoserver provides a small MCP server demonstrating tools,
// resources, and prompts.
//
// The server exposes:
//   - Tools add, subtract, and multiply, each taking numbers a and b
//   - The resource template file:///{+path}, which reads a file as text
//   - The resource text://hello-world
//   - The prompt review-code, which asks for a review of the given code
//
// # Running
//
// Serve over stdio until the client disconnects:
//
//	srv := demoserver.New(demoserver.WithLogger(slog.Default()))
//	if err := srv.Run(ctx, demoserver.NewStdioTransport()); err != nil {
//	    log.Fatal(err)
//	}
//
// Any go-sdk transport works, including in-memory transports for tests.
// A connect failure is returned as *ConnectError and is never retried.
//
// # In-process use
//
// The registered operations can be called without a transport:
//
//	result, err := srv.CallTool(ctx, "add", map[string]any{"a": 2, "b": 3})
//
// Or through a connected client with WithClient:
//
//	err := demoserver.WithClient(ctx, func(cs *mcp.ClientSession) error {
//	    res, err := cs.ReadResource(ctx, &mcp.ReadResourceParams{URI: "text://hello-world"})
//	    ...
//	})
//
// # Errors
//
// Unknown operations return *UnknownOperationError and malformed arguments
// return *InvalidArgumentsError. Over the protocol, tool dispatch errors are
// reported as error results, and unknown resources as resource-not-found.
package demoserver
