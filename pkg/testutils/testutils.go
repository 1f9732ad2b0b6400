package testutils

import (
	"encoding/csv"
	"fmt"
	"log"
	"math/rand"
	"os"
	"pricescan/pkg/scanner"
	"time"
)

// RandomEAN13 - random code with a valid EAN-13 check digit.
func RandomEAN13(r *rand.Rand) string {
	data := fmt.Sprintf("%012d", r.Int63n(1_000_000_000_000))
	return data + string(scanner.CheckDigit(data))
}

// GenerateTestData - writes a code,price CSV file with lines rows into targetDir and returns its path.
func GenerateTestData(lines int, targetDir string) string {
	now := time.Now()
	fileName := fmt.Sprintf("%s/%d_test_prices.csv", targetDir, now.UnixNano())
	file, err := os.Create(fileName)
	if err != nil {
		log.Fatalf("can't create file %s: (%s)", fileName, err.Error())
	}
	r := rand.New(rand.NewSource(now.UnixNano()))
	writer := csv.NewWriter(file)
	for i := 0; i < lines; i++ {
		price := fmt.Sprintf("%d.%02d", r.Intn(200), r.Intn(100))

		line := []string{RandomEAN13(r), price}

		err = writer.Write(line)
		if err != nil {
			log.Fatalf("can't write line=%s to file %s: (%s)", line, fileName, err.Error())
		}
	}
	writer.Flush()
	if err := file.Close(); err != nil {
		log.Fatalf("can't close file %s: (%s)", fileName, err.Error())
	}
	return fileName
}
