package fix

// Tag numbers consumed or produced by the exchange.
const (
	TagBeginString   = 8
	TagBodyLength    = 9
	TagCheckSum      = 10
	TagCumQty        = 14
	TagMsgType       = 35
	TagOrderID       = 37
	TagOrderQty      = 38
	TagOrdStatus     = 39
	TagOrdType       = 40
	TagPrice         = 44
	TagSenderCompID  = 49
	TagSide          = 54
	TagSymbol        = 55
	TagTargetCompID  = 56
	TagText          = 58
	TagEncryptMethod = 98
	TagExecType      = 150
	TagLeavesQty     = 151
)

// BeginString is the protocol version emitted in every header.
const BeginString = "FIX.4.2"

// Message types.
const (
	MsgTypeLogon      = "A"
	MsgTypeReject     = "3"
	MsgTypeExecReport = "8"
	MsgTypeNewOrder   = "D"
	MsgTypeCancel     = "F"
	MsgTypeStatus     = "H"
)

// Side values (tag 54).
const (
	SideBid = "1"
	SideAsk = "2"
)

// OrdType values (tag 40).
const (
	OrdTypeGTC = "1"
	OrdTypeFOK = "3"
	OrdTypeIOC = "4"
)

// ExecType values (tag 150).
const (
	ExecTypeNew    = "0"
	ExecTypeCancel = "4"
	ExecTypeStatus = "I"
)

// OrdStatus values (tag 39).
const (
	OrdStatusNew       = "0"
	OrdStatusPartial   = "1"
	OrdStatusFilled    = "2"
	OrdStatusCancelled = "4"
)

// CompIDs are fixed for the session protocol; the server always speaks as
// SERVER to CLIENT, and the client the reverse.
const (
	CompIDServer = "SERVER"
	CompIDClient = "CLIENT"
)
