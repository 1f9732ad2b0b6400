package scanner

const (
	EAN13   = "ean_13"
	EAN8    = "ean_8"
	UPCA    = "upc_a"
	Code128 = "code_128"

	code128MaxLength = 80
)

type (
	// Reader - recognizes payloads of one barcode symbology.
	Reader interface {
		Format() string
		Accept(payload string) bool
	}

	gs1Reader struct {
		format string
		length int
	}

	code128Reader struct{}
)

var (
	symbologies = map[string]Reader{
		EAN13:   gs1Reader{format: EAN13, length: 13},
		EAN8:    gs1Reader{format: EAN8, length: 8},
		UPCA:    gs1Reader{format: UPCA, length: 12},
		Code128: code128Reader{},
	}
)

func (r gs1Reader) Format() string {
	return r.format
}

func (r gs1Reader) Accept(payload string) bool {
	if len(payload) != r.length {
		return false
	}
	for i := 0; i < len(payload); i++ {
		if payload[i] < '0' || payload[i] > '9' {
			return false
		}
	}
	return CheckDigit(payload[:len(payload)-1]) == payload[len(payload)-1]
}

func (code128Reader) Format() string {
	return Code128
}

func (code128Reader) Accept(payload string) bool {
	if len(payload) == 0 || len(payload) > code128MaxLength {
		return false
	}
	for i := 0; i < len(payload); i++ {
		if payload[i] < 0x20 || payload[i] > 0x7e {
			return false
		}
	}
	return true
}

// CheckDigit - GS1 mod 10 check digit for a string of data digits.
func CheckDigit(data string) byte {
	sum := 0
	weight := 3
	for i := len(data) - 1; i >= 0; i-- {
		sum += int(data[i]-'0') * weight
		if weight == 3 {
			weight = 1
		} else {
			weight = 3
		}
	}
	return byte('0' + (10-sum%10)%10)
}
