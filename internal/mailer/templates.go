package mailer

import "fmt"

// 通知メールの件名と本文。

func PaymentCapturedMail(orderID int64) (string, string) {
	subject := "Payment Success"
	body := fmt.Sprintf("Your payment for order %d has succeeded. Please check the status in the website.", orderID)
	return subject, body
}

func PaymentFailedMail(orderID int64) (string, string) {
	subject := "Payment Failed"
	body := fmt.Sprintf("Your payment for order %d has failed. Please check the status in the website.", orderID)
	return subject, body
}

func RefundCreatedMail(amount int64) (string, string) {
	subject := "Refund Initiated"
	body := fmt.Sprintf("A refund of %d has been initiated. You'll receive the amount in your account within 5-7 business days.", amount)
	return subject, body
}

func RefundProcessedMail(amount int64) (string, string) {
	subject := "Refund Processed"
	body := fmt.Sprintf("A refund of %d has been processed.", amount)
	return subject, body
}

func RefundFailedMail(amount int64) (string, string) {
	subject := "Refund Failed"
	body := fmt.Sprintf("A refund of %d has failed. Please contact support for more details.", amount)
	return subject, body
}

func OrderCancelledMail(orderID int64) (string, string) {
	subject := fmt.Sprintf("Order %d Cancelled", orderID)
	body := fmt.Sprintf("Your order %d has been cancelled.", orderID)
	return subject, body
}
