// Package testdb provides test database utilities for the Circle API.
//
// The testdb package manages SurrealDB test connections with automatic
// setup, migration, and cleanup. It is only needed by tests that exercise
// the SurrealDB store backend.
//
// # Test Database Setup
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    defer tdb.Close()
//	}
//
// # Migrations
//
// Every .surql file under migrations/ is applied in name order on setup.
//
// # Isolation
//
// Each TestDB gets its own namespace, removed again by Close.
//
// # Environment
//
//	TEST_DB_HOST     - SurrealDB host (default: localhost)
//	TEST_DB_PORT     - SurrealDB port (default: 8000)
//	TEST_DB_USER     - SurrealDB username (default: root)
//	TEST_DB_PASSWORD - SurrealDB password (default: root)
//	CIRCLE_ROOT      - repository root, used to find migrations/
//
// Tests are skipped, not failed, when SurrealDB is not reachable.
package testdb
