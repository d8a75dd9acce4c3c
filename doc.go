// Package tuma is the Go client for the TUMA document exchange:
// end-to-end encrypted file delivery over a permanent, content-
// addressed storage network.
//
// A document is encrypted with a key derived deterministically from
// the two participant identities and a per-document salt, so only the
// sender and the recipient can derive the identical key. The
// ciphertext is uploaded in chunks under the application's storage
// credential, bound to its metadata by an integrity digest, and later
// retrieved by content ID with gateway fallback, verified, and
// decrypted.
//
// Basic usage:
//
//	client, err := tuma.New(
//	    tuma.WithCredentialFile("credential.json"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Send(ctx, fileBytes, tuma.SendRequest{
//	    FileName:    "contract.pdf",
//	    ContentType: "application/pdf",
//	    Sender:      senderAddr,
//	    Recipient:   recipientAddr,
//	})
//
//	doc, err := client.Open(ctx, result.ContentID, recipientAddr)
//
// Errors are typed: errors.Is distinguishes tampering (ErrIntegrity),
// wrong participants (ErrPermission, ErrDecryption), network failures
// (ErrRetrieval), and the soft uploaded-but-unconfirmed state
// (ErrConfirmationTimeout), so callers can present each differently.
package tuma
