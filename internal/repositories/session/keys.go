package session

import "fmt"

// Key prefix for all ledger data
const keyPrefix = "pokerledger"

// sessionKey returns the Redis key for a session document hash
func sessionKey(id string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// sessionSeqKey returns the Redis key for the per-day session counter
func sessionSeqKey(datePrefix string) string {
	return fmt.Sprintf("%s:session_seq:%s", keyPrefix, datePrefix)
}

// sessionsIndexKey returns the Redis key for the ZSET of sessions by creation time
func sessionsIndexKey() string {
	return fmt.Sprintf("%s:sessions", keyPrefix)
}

// updatesChannel returns the pub/sub channel announcing writes to a session
func updatesChannel(id string) string {
	return fmt.Sprintf("%s:session:%s:updates", keyPrefix, id)
}
