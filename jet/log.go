package jet

import "log"

// Logf reports clustering diagnostics. Replace it to silence or capture them.
var Logf = log.Printf
