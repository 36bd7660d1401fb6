package dialogue

// Template keys. Slot prompts are addressed as "ask_slot."+slotName.
const (
	keyGreeting            = "greeting"
	keyConfirmSummary      = "confirm_summary"
	keyExecuted            = "executed"
	keyExecutionFailed     = "execution_failed"
	keyExecutionRetry      = "execution_failed_retry"
	keyClarifyChange       = "clarify_change"
	keySlotInvalid         = "slot_invalid"
	keyResumed             = "resumed"
	keyFarewell            = "farewell"
	keyComplaintAck        = "complaint_ack"
	keyFallback            = "fallback"
	keyRoomInquiry         = "room_inquiry"
	keySessionClosed       = "session_closed"
	keyConversationTooLong = "conversation_too_long"
	keyTurnError           = "turn_error"
)

// templates holds per-language response text. English is the complete
// reference set; other languages carry the high-traffic subset and fall
// back to the default language for the rest.
var templates = map[string]map[string]string{
	"en": {
		keyGreeting:        "Welcome to {hotel}! I can help you book a room, reserve a table, arrange an event hall, or answer questions about the hotel. How may I assist you today?",
		keyConfirmSummary:  "Let me confirm your {intent}:\n{summary}\nShall I go ahead? (yes/no)",
		keyExecuted:        "Done! Your confirmation reference is {reference}. Is there anything else I can help you with?",
		keyExecutionFailed: "I'm sorry, I couldn't complete that: {reason}. Please contact our front desk for assistance.",
		keyExecutionRetry:  "I'm sorry, that didn't work out: {reason}. Let's try different details.",
		keyClarifyChange:   "No problem. Which detail would you like to change?",
		keySlotInvalid:     "That doesn't look right: {reason}. Could you try again?",
		keyResumed:         "Now, back to your earlier {intent}.",
		keyFarewell:        "Thank you for choosing {hotel}. Have a wonderful day!",
		keyComplaintAck:    "I'm very sorry to hear that. I've noted your concern and our duty manager will follow up with you shortly.",
		keyFallback:        "I can help with room bookings, dining reservations, event halls, and general hotel information. What would you like to do?",
		keyRoomInquiry:     "Here are our rooms:\n{catalog}\nWould you like to book one?",
		keySessionClosed:   "Your session has been closed. Feel free to start a new conversation anytime.",

		keyConversationTooLong: "We've been chatting for a while, so let me connect you with our front desk to finish up.",
		keyTurnError:           "Something went wrong on our side. Please try that again in a moment.",

		"ask_slot.guest_name":        "May I have your full name, please?",
		"ask_slot.organizer_name":    "May I have the organizer's full name?",
		"ask_slot.phone_number":      "Could you share a contact phone number?",
		"ask_slot.check_in_date":     "What date would you like to check in?",
		"ask_slot.check_out_date":    "And your check-out date?",
		"ask_slot.reservation_date":  "For which date would you like the reservation?",
		"ask_slot.event_date":        "On what date is the event?",
		"ask_slot.room_type":         "Which room type would you prefer: single, double, deluxe, or suite?",
		"ask_slot.meal_type":         "Is that for breakfast, lunch, or dinner?",
		"ask_slot.hall_type":         "Would you like a small, medium, or large hall?",
		"ask_slot.guest_count":       "How many guests will there be?",
		"ask_slot.duration":          "How many hours will you need the hall for?",
		"ask_slot.booking_reference": "Could you give me your booking reference (it starts with BK)?",

		"info.checkin":   "Check-in is from {check_in} and check-out is by {check_out}.",
		"info.amenities": "All rooms include WiFi, TV and air conditioning; deluxe rooms and suites add a mini bar, balcony and more.",
		"info.parking":   "Complimentary parking is available for all our guests.",
		"info.pets":      "We welcome small pets in selected rooms; please let us know in advance.",
		"info.wifi":      "High-speed WiFi is free throughout the hotel.",
		"info.payment":   "We accept all major cards, UPI and cash. A 12% tax applies to bookings.",
	},
	"hi": {
		keyGreeting:       "{hotel} में आपका स्वागत है! मैं कमरा बुकिंग, भोजन आरक्षण और होटल की जानकारी में आपकी मदद कर सकता हूँ। मैं आपकी कैसे सहायता करूँ?",
		keyConfirmSummary: "कृपया पुष्टि करें:\n{summary}\nक्या मैं आगे बढ़ूँ? (हाँ/नहीं)",
		keyExecuted:       "हो गया! आपका संदर्भ क्रमांक {reference} है। क्या मैं और कुछ मदद कर सकता हूँ?",
		keyFarewell:       "{hotel} चुनने के लिए धन्यवाद। आपका दिन शुभ हो!",
		keyFallback:       "मैं कमरा बुकिंग, भोजन आरक्षण और होटल की जानकारी में मदद कर सकता हूँ।",

		"ask_slot.guest_name":    "कृपया अपना पूरा नाम बताएं।",
		"ask_slot.phone_number":  "कृपया अपना फ़ोन नंबर बताएं।",
		"ask_slot.check_in_date": "आप किस तारीख़ को चेक-इन करना चाहेंगे?",
		"ask_slot.room_type":     "कौन सा कमरा चाहिए: सिंगल, डबल, डीलक्स या सुइट?",
		"ask_slot.guest_count":   "कितने मेहमान होंगे?",
	},
	"ru": {
		keyGreeting:       "Добро пожаловать в {hotel}! Я помогу забронировать номер, столик или зал, а также отвечу на вопросы об отеле. Чем могу помочь?",
		keyConfirmSummary: "Подтвердите, пожалуйста:\n{summary}\nПродолжить? (да/нет)",
		keyExecuted:       "Готово! Ваш номер подтверждения: {reference}. Могу ли я помочь чем-то ещё?",
		keyFarewell:       "Спасибо, что выбрали {hotel}. Хорошего дня!",
		keyFallback:       "Я могу помочь с бронированием номеров, ресторана и залов, а также с информацией об отеле.",

		"ask_slot.guest_name":    "Как вас зовут (полное имя)?",
		"ask_slot.phone_number":  "Укажите, пожалуйста, контактный телефон.",
		"ask_slot.check_in_date": "На какую дату вы хотите заехать?",
		"ask_slot.room_type":     "Какой номер вы предпочитаете: одноместный, двухместный, делюкс или люкс?",
		"ask_slot.guest_count":   "Сколько будет гостей?",
	},
	"fr": {
		keyGreeting:       "Bienvenue au {hotel} ! Je peux vous aider à réserver une chambre, une table ou une salle. Comment puis-je vous aider ?",
		keyConfirmSummary: "Merci de confirmer :\n{summary}\nPuis-je continuer ? (oui/non)",
		keyExecuted:       "C'est fait ! Votre référence est {reference}. Puis-je faire autre chose pour vous ?",
		keyFarewell:       "Merci d'avoir choisi {hotel}. Excellente journée !",
		keyFallback:       "Je peux vous aider pour les chambres, le restaurant, les salles et les informations sur l'hôtel.",

		"ask_slot.guest_name":   "Puis-je avoir votre nom complet ?",
		"ask_slot.phone_number": "Pouvez-vous me donner un numéro de téléphone ?",
	},
	"de": {
		keyGreeting:       "Willkommen im {hotel}! Ich helfe Ihnen gern bei Zimmerbuchungen, Tischreservierungen und Fragen zum Hotel. Wie kann ich helfen?",
		keyConfirmSummary: "Bitte bestätigen Sie:\n{summary}\nSoll ich fortfahren? (ja/nein)",
		keyExecuted:       "Erledigt! Ihre Referenz lautet {reference}. Kann ich sonst noch etwas für Sie tun?",
		keyFarewell:       "Vielen Dank, dass Sie sich für {hotel} entschieden haben. Einen schönen Tag!",
		keyFallback:       "Ich helfe bei Zimmern, Restaurant, Veranstaltungsräumen und allgemeinen Hotelfragen.",

		"ask_slot.guest_name":   "Darf ich um Ihren vollständigen Namen bitten?",
		"ask_slot.phone_number": "Können Sie mir eine Telefonnummer nennen?",
	},
	"es": {
		keyGreeting:       "¡Bienvenido a {hotel}! Puedo ayudarle a reservar una habitación, una mesa o un salón. ¿En qué puedo ayudarle?",
		keyConfirmSummary: "Por favor confirme:\n{summary}\n¿Continúo? (sí/no)",
		keyExecuted:       "¡Listo! Su referencia es {reference}. ¿Puedo ayudarle en algo más?",
		keyFarewell:       "Gracias por elegir {hotel}. ¡Que tenga un buen día!",
		keyFallback:       "Puedo ayudarle con habitaciones, restaurante, salones e información del hotel.",

		"ask_slot.guest_name":   "¿Me puede dar su nombre completo?",
		"ask_slot.phone_number": "¿Me puede facilitar un número de teléfono?",
	},
}

// slotLabels renders slot names for confirmation summaries
var slotLabels = map[string]map[string]string{
	"en": {
		"guest_name":        "Name",
		"organizer_name":    "Organizer",
		"phone_number":      "Phone",
		"check_in_date":     "Check-in",
		"check_out_date":    "Check-out",
		"reservation_date":  "Date",
		"event_date":        "Event date",
		"room_type":         "Room type",
		"meal_type":         "Meal",
		"hall_type":         "Hall",
		"guest_count":       "Guests",
		"duration":          "Duration (hours)",
		"booking_reference": "Reference",
	},
	"hi": {
		"guest_name":    "नाम",
		"phone_number":  "फ़ोन",
		"check_in_date": "चेक-इन",
		"room_type":     "कमरे का प्रकार",
		"guest_count":   "मेहमान",
	},
	"ru": {
		"guest_name":    "Имя",
		"phone_number":  "Телефон",
		"check_in_date": "Заезд",
		"room_type":     "Тип номера",
		"guest_count":   "Гости",
	},
}

// intentLabels renders intent names for summaries and resume messages
var intentLabels = map[string]map[string]string{
	"en": {
		"room_booking":         "room booking",
		"dining_reservation":   "dining reservation",
		"event_booking":        "event booking",
		"booking_modification": "booking change",
		"booking_cancellation": "booking cancellation",
	},
	"ru": {
		"room_booking":       "бронирование номера",
		"dining_reservation": "бронь столика",
		"event_booking":      "бронирование зала",
	},
}

// knowledgeTopics maps utterance keywords to info templates
var knowledgeTopics = []struct {
	key      string
	keywords []string
}{
	{"info.checkin", []string{"check in", "check-in", "checkin", "check out", "check-out", "checkout", "timing"}},
	{"info.parking", []string{"parking", "car", "vehicle"}},
	{"info.pets", []string{"pet", "dog", "cat"}},
	{"info.wifi", []string{"wifi", "wi-fi", "internet"}},
	{"info.payment", []string{"payment", "pay", "card", "upi", "cash", "tax"}},
	{"info.amenities", []string{"amenities", "amenity", "facilities", "services"}},
}
