package wire

// Envelope is one message unit: who sent it, who it is addressed to, and a
// tagged payload. An Envelope is immutable once constructed. On a reply, Src
// and Dest are the swapped pair of the request that triggered it.
type Envelope struct {
	Src  string
	Dest string
	Body Payload
}
