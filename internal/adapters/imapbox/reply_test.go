package imapbox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractReply_DropsQuotedLines(t *testing.T) {
	body := `ADJUST USD spot_buying_rate max 740

> Exchange Rate Alert - 2026-08-26 10:30:45
> US Dollar spot_buying_rate: 740 above maximum 735`

	require.Equal(t, "ADJUST USD spot_buying_rate max 740", ExtractReply(body))
}

func TestExtractReply_CutsAtAttributionMarker(t *testing.T) {
	body := `SET JPY spot_selling_rate min 4.80 max 5.20

On Tue, 26 Aug 2026 at 10:31, Rate Watch wrote:
ADJUST USD spot_buying_rate max 700`

	require.Equal(t, "SET JPY spot_selling_rate min 4.80 max 5.20", ExtractReply(body))
}

func TestExtractReply_CutsAtOriginalMessage(t *testing.T) {
	body := "REMOVE USD spot_buying_rate min\n-----Original Message-----\nADJUST USD spot_buying_rate max 700"

	require.Equal(t, "REMOVE USD spot_buying_rate min", ExtractReply(body))
}

func TestExtractReply_PlainReplyUntouched(t *testing.T) {
	require.Equal(t, "ADJUST USD spot_buying_rate max 740",
		ExtractReply("  ADJUST USD spot_buying_rate max 740  \n"))
}

func TestExtractReply_AllQuoted(t *testing.T) {
	require.Equal(t, "", ExtractReply("> old text\n> more old text"))
}
