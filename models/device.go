package models

// Device, bir IoT cihazının kendini tanıttığı kimlik çiftidir.
//
// Hiçbir zaman veritabanına yazılmaz: yalnızca registrationID + accountEmail
// çiftinin aynı bitkiye/hesaba bağlı olduğunu doğrulamak için kullanılır.
// Cihazın kendisi hakkında hiçbir şey saklamayız — cihaz, bitkinin
// registration token'ını bilen herhangi bir donanımdır.
type Device struct {
	RegistrationID string `json:"registrationID"`
	AccountEmail   string `json:"accountEmail"`
}
