// Package jobs implements background jobs for the Circle API.
//
// Jobs run on their own goroutine, independently of HTTP request handling,
// and follow the same lifecycle:
//
//	sweeper := jobs.NewOrphanSweeper(userService, 10*time.Minute, logger)
//	sweeper.Start()
//	defer sweeper.Stop()
//
// RunOnce triggers a single pass synchronously. Failures are logged and the
// loop keeps going.
//
// # Orphan Sweeper
//
// Deleting a user cascades to its posts, profile and the subscription lists
// that reference it, but a create racing that delete can still attach a
// record to the user being removed. The orphan sweeper finds such records
// and removes them.
package jobs
