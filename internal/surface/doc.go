// Package surface shares one presentation state between the controller and
// any number of render consumers without ever blocking.
//
// All access to the state goes through a mutex that is only ever tried,
// never waited on. A command that finds the lock held is dropped and
// reported to the caller. A read that finds the lock held returns the most
// recently published [Snapshot] instead. Snapshots are immutable and
// versioned, and each consumer reads through its own [Reader], which never
// hands out a version older than one it already returned.
package surface
