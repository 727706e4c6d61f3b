package utils

import "github.com/skip2/go-qrcode"

// GenerateQRCode encode nội dung thành PNG vuông size px, mức sửa lỗi
// Medium là đủ cho payload vé.
func GenerateQRCode(content string, size int) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, size)
}
