package smoke

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Expected bodies and values.
const (
	aboutText    = "This is a simple Flask web application."
	homeName     = "Aakash"
	noneText     = "None"
	postTemplate = "[POST] Hello, %s. Your password is %s"
	getTemplate  = "[GET] Hello, %s. Your password is %s"
)
