// Package iso7816 holds typed interindustry data objects from ISO 7816-4:
// the file control templates returned by SELECT, the EF.DIR application
// template, and the PIV card holder unique identifier. Each type implements
// the bertlv codec capabilities, so they encode and decode through the same
// Encoder and Decoder as any caller-defined object.
package iso7816

import "github.com/gemalto/bertlv-go"

// Interindustry tags from ISO 7816-4 tables 10 through 12. The single-quoted
// hex names from the standard appear in the comments.
var (
	// Templates returned in response to SELECT, section 5.3.3.
	TagFCP = bertlv.Application(2).WithConstructed(true)  // '62'
	TagFMD = bertlv.Application(4).WithConstructed(true)  // '64'
	TagFCI = bertlv.Application(15).WithConstructed(true) // '6F'

	// EF.DIR members, section 8.2.1.1.
	TagApplicationTemplate = bertlv.Application(1).WithConstructed(true) // '61'
	TagAID                 = bertlv.Application(15)                      // '4F'
	TagApplicationLabel    = bertlv.Application(16)                      // '50'
	TagURL                 = bertlv.Application(80)                      // '5F50'

	// Discretionary data, plain and templated.
	TagDiscretionaryData     = bertlv.Application(19)                      // '53'
	TagDiscretionaryTemplate = bertlv.Application(19).WithConstructed(true) // '73'

	// File control parameter members, table 12.
	TagFileSize        = bertlv.ContextSpecific(0)  // '80'
	TagTotalFileSize   = bertlv.ContextSpecific(1)  // '81'
	TagFileDescriptor  = bertlv.ContextSpecific(2)  // '82'
	TagFileID          = bertlv.ContextSpecific(3)  // '83'
	TagDFName          = bertlv.ContextSpecific(4)  // '84'
	TagLifeCycleStatus = bertlv.ContextSpecific(10) // '8A'
)
