package tests

// Mock generation example for handler tests.
//
// Usage:
//   go generate ./internal/adapter/http/handlers/tests
//
//go:generate mockery --name SyncEngine --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename sync_engine_mock.go --with-expecter
