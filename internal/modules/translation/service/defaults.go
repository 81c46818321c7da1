package service

import "desideri.com/pugliaclub/internal/entity"

// defaultTranslations ship with the binary. Stored rows override them key
// by key.
var defaultTranslations = []entity.Translation{
	{Key: "home", Italian: "Home", English: "Home", Category: "navigation"},
	{Key: "dashboard", Italian: "Dashboard", English: "Dashboard", Category: "navigation"},
	{Key: "leaderboard", Italian: "Classifica", English: "Leaderboard", Category: "navigation"},
	{Key: "prizes", Italian: "Premi", English: "Prizes", Category: "navigation"},
	{Key: "missions", Italian: "Missioni", English: "Missions", Category: "navigation"},
	{Key: "profile", Italian: "Profilo", English: "Profile", Category: "navigation"},
	{Key: "admin_panel", Italian: "Pannello Admin", English: "Admin Panel", Category: "navigation"},
	{Key: "welcome", Italian: "Benvenuto", English: "Welcome", Category: "common"},
	{Key: "points", Italian: "punti", English: "points", Category: "common"},
	{Key: "level", Italian: "Livello", English: "Level", Category: "common"},
	{Key: "loading", Italian: "Caricamento...", English: "Loading...", Category: "common"},
	{Key: "save", Italian: "Salva", English: "Save", Category: "common"},
	{Key: "cancel", Italian: "Annulla", English: "Cancel", Category: "common"},
	{Key: "confirm", Italian: "Conferma", English: "Confirm", Category: "common"},
	{Key: "delete", Italian: "Elimina", English: "Delete", Category: "common"},
	{Key: "edit", Italian: "Modifica", English: "Edit", Category: "common"},
	{Key: "create", Italian: "Crea", English: "Create", Category: "common"},
	{Key: "view", Italian: "Visualizza", English: "View", Category: "common"},
	{Key: "download", Italian: "Scarica", English: "Download", Category: "common"},
	{Key: "upload", Italian: "Carica", English: "Upload", Category: "common"},
	{Key: "send", Italian: "Invia", English: "Send", Category: "common"},
	{Key: "close", Italian: "Chiudi", English: "Close", Category: "common"},
	{Key: "login", Italian: "Accedi", English: "Login", Category: "auth"},
	{Key: "register", Italian: "Registrati", English: "Register", Category: "auth"},
	{Key: "logout", Italian: "Esci", English: "Logout", Category: "auth"},
	{Key: "email", Italian: "Email", English: "Email", Category: "auth"},
	{Key: "password", Italian: "Password", English: "Password", Category: "auth"},
	{Key: "name", Italian: "Nome", English: "Name", Category: "auth"},
	{Key: "username", Italian: "Username", English: "Username", Category: "auth"},
	{Key: "mission_completed", Italian: "Missione completata 🌿", English: "Mission accomplished 🌿", Category: "missions"},
	{Key: "complete_mission", Italian: "Completa Missione", English: "Complete Mission", Category: "missions"},
	{Key: "submit_mission", Italian: "Invia Missione", English: "Submit Mission", Category: "missions"},
	{Key: "mission_description", Italian: "Descrizione della missione", English: "Mission description", Category: "missions"},
	{Key: "daily_missions", Italian: "Missioni Giornaliere", English: "Daily Missions", Category: "missions"},
	{Key: "weekly_missions", Italian: "Missioni Settimanali", English: "Weekly Missions", Category: "missions"},
	{Key: "special_missions", Italian: "Missioni Speciali", English: "Special Missions", Category: "missions"},
	{Key: "social_actions", Italian: "Azioni Social", English: "Social Actions", Category: "missions"},
	{Key: "pending_approval", Italian: "In verifica", English: "Pending approval", Category: "missions"},
	{Key: "limit_reached", Italian: "Limite raggiunto", English: "Limit reached", Category: "missions"},
	{Key: "completed", Italian: "Completata", English: "Completed", Category: "missions"},
	{Key: "available", Italian: "Disponibile", English: "Available", Category: "missions"},
	{Key: "monthly_rewards", Italian: "Premi del mese", English: "Monthly Rewards", Category: "prizes"},
	{Key: "current_prizes", Italian: "Premi Attuali", English: "Current Prizes", Category: "prizes"},
	{Key: "first_place", Italian: "1° Posto", English: "1st Place", Category: "prizes"},
	{Key: "second_place", Italian: "2° Posto", English: "2nd Place", Category: "prizes"},
	{Key: "third_place", Italian: "3° Posto", English: "3rd Place", Category: "prizes"},
	{Key: "no_prizes_yet", Italian: "Nessun premio disponibile", English: "No prizes available yet", Category: "prizes"},
	{Key: "my_profile", Italian: "Il mio Profilo", English: "My Profile", Category: "profile"},
	{Key: "my_club_card", Italian: "La mia Card", English: "My Club Card", Category: "profile"},
	{Key: "total_points", Italian: "Punti totali", English: "Total Points", Category: "profile"},
	{Key: "current_points", Italian: "Punti questo mese", English: "Points this month", Category: "profile"},
	{Key: "current_position", Italian: "Posizione attuale", English: "Current Position", Category: "profile"},
	{Key: "notifications", Italian: "Notifiche", English: "Notifications", Category: "profile"},
	{Key: "action_history", Italian: "Cronologia Azioni", English: "Action History", Category: "profile"},
	{Key: "club_card_ready", Italian: "La tua nuova Card Desideri di Puglia è pronta — elegante e interattiva come te 🌿", English: "Your new Desideri di Puglia Card is ready — elegant and interactive like you 🌿", Category: "club_card"},
	{Key: "download_card", Italian: "Scarica Card", English: "Download Card", Category: "club_card"},
	{Key: "add_to_wallet", Italian: "Aggiungi al Wallet", English: "Add to Wallet", Category: "club_card"},
	{Key: "scan_qr", Italian: "Scansiona per visualizzare il tuo profilo 🌿", English: "Scan to view your profile 🌿", Category: "club_card"},
	{Key: "official_member_card", Italian: "Official Member Card", English: "Official Member Card", Category: "club_card"},
	{Key: "member_since", Italian: "Membro dal", English: "Member since", Category: "club_card"},
	{Key: "club_statistics", Italian: "Le tue statistiche", English: "Your statistics", Category: "club_card"},
	{Key: "pending_actions", Italian: "Azioni in attesa", English: "Pending Actions", Category: "admin"},
	{Key: "statistics", Italian: "Statistiche", English: "Statistics", Category: "admin"},
	{Key: "users", Italian: "Utenti", English: "Users", Category: "admin"},
	{Key: "email_admin", Italian: "Email Admin", English: "Email Admin", Category: "admin"},
	{Key: "missions_admin", Italian: "Missioni", English: "Missions", Category: "admin"},
	{Key: "prizes_admin", Italian: "Premi", English: "Prizes", Category: "admin"},
	{Key: "settings", Italian: "Impostazioni", English: "Settings", Category: "admin"},
	{Key: "approve", Italian: "Approva", English: "Approve", Category: "admin"},
	{Key: "reject", Italian: "Rifiuta", English: "Reject", Category: "admin"},
	{Key: "restore_defaults", Italian: "Ripristina Default", English: "Restore Defaults", Category: "admin"},
	{Key: "language_updated", Italian: "🌿 Lingua aggiornata in tempo reale: Italiano", English: "🌿 Language updated in real time: English", Category: "messages"},
	{Key: "prize_updated", Italian: "🌿 Premio aggiornato con successo e visibile agli utenti 🌿", English: "🌿 Prize updated successfully and visible to users 🌿", Category: "messages"},
	{Key: "mission_created", Italian: "🎯 Missione creata con successo!", English: "🎯 Mission created successfully!", Category: "messages"},
	{Key: "email_sent", Italian: "📩 Email inviata con successo!", English: "📩 Email sent successfully!", Category: "messages"},
	{Key: "success", Italian: "Successo", English: "Success", Category: "messages"},
	{Key: "error", Italian: "Errore", English: "Error", Category: "messages"},
	{Key: "public_profile", Italian: "Profilo Pubblico", English: "Public Profile", Category: "public_profile"},
	{Key: "profile_not_found", Italian: "Profilo Non Trovato", English: "Profile Not Found", Category: "public_profile"},
	{Key: "loading_profile", Italian: "Caricamento profilo Club...", English: "Loading Club profile...", Category: "public_profile"},
	{Key: "current_rank", Italian: "Posizione Attuale", English: "Current Rank", Category: "public_profile"},
	{Key: "missions_completed", Italian: "Missioni Complete", English: "Missions Completed", Category: "public_profile"},
	{Key: "prizes_and_awards", Italian: "Premi e Riconoscimenti", English: "Prizes and Awards", Category: "public_profile"},
	{Key: "current_month_prize", Italian: "Premio del Mese Corrente", English: "Current Month Prize", Category: "public_profile"},
	{Key: "past_prizes", Italian: "Premi Precedenti", English: "Past Prizes", Category: "public_profile"},
	{Key: "no_prizes_message", Italian: "Nessun premio ancora — continua a giocare!", English: "No prizes yet — keep playing!", Category: "public_profile"},
	{Key: "wallet_coming_soon", Italian: "Aggiungi al Wallet — Presto disponibile", English: "Add to Wallet — Coming Soon", Category: "club_card"},
}

// Defaults returns a copy of the built-in translations.
func Defaults() []entity.Translation {
	out := make([]entity.Translation, len(defaultTranslations))
	copy(out, defaultTranslations)
	return out
}
