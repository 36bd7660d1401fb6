package email

// Email templates. Kept as simple inline HTML so the service stays
// self-contained; no files to ship alongside the binary.

const bookingConfirmationTemplate = `
<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <div style="background: #1a365d; color: #fff; padding: 24px; text-align: center;">
    <h1 style="margin: 0;">{{.HotelName}}</h1>
  </div>
  <div style="padding: 24px;">
    <h2>Your booking is confirmed!</h2>
    <p>Dear {{.GuestName}},</p>
    <p>Thank you for choosing {{.HotelName}}. Here are your booking details:</p>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="padding: 6px 0;"><strong>Reference</strong></td><td>{{.Reference}}</td></tr>
      <tr><td style="padding: 6px 0;"><strong>Room</strong></td><td>{{.RoomType}}</td></tr>
      <tr><td style="padding: 6px 0;"><strong>Check-in</strong></td><td>{{.CheckIn}}</td></tr>
      <tr><td style="padding: 6px 0;"><strong>Check-out</strong></td><td>{{.CheckOut}}</td></tr>
      <tr><td style="padding: 6px 0;"><strong>Nights</strong></td><td>{{.Nights}}</td></tr>
      <tr><td style="padding: 6px 0;"><strong>Guests</strong></td><td>{{.Guests}}</td></tr>
      <tr><td style="padding: 6px 0;"><strong>Room total</strong></td><td>₹{{.Total}}</td></tr>
      <tr><td style="padding: 6px 0;"><strong>Tax</strong></td><td>₹{{.Tax}}</td></tr>
      <tr><td style="padding: 6px 0;"><strong>Amount due</strong></td><td><strong>₹{{.FinalAmount}}</strong></td></tr>
    </table>
    <p>Please present this reference at the front desk on arrival.</p>
    <p>We look forward to welcoming you!</p>
  </div>
  <div style="background: #f5f5f5; padding: 16px; text-align: center; font-size: 12px; color: #888;">
    {{.HotelName}} · This is an automated message, please do not reply.
  </div>
</body>
</html>
`

const bookingCancelledTemplate = `
<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <div style="background: #1a365d; color: #fff; padding: 24px; text-align: center;">
    <h1 style="margin: 0;">{{.HotelName}}</h1>
  </div>
  <div style="padding: 24px;">
    <h2>Booking cancelled</h2>
    <p>Dear {{.GuestName}},</p>
    <p>Your booking <strong>{{.Reference}}</strong> (check-in {{.CheckIn}}) has been cancelled as requested.</p>
    <p>If this was a mistake, or you would like to rebook, just start a new conversation with our concierge.</p>
  </div>
  <div style="background: #f5f5f5; padding: 16px; text-align: center; font-size: 12px; color: #888;">
    {{.HotelName}} · This is an automated message, please do not reply.
  </div>
</body>
</html>
`

const reservationConfirmationTemplate = `
<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <div style="background: #1a365d; color: #fff; padding: 24px; text-align: center;">
    <h1 style="margin: 0;">{{.HotelName}}</h1>
  </div>
  <div style="padding: 24px;">
    <h2>{{.Kind}} confirmed</h2>
    <p>Dear {{.GuestName}},</p>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="padding: 6px 0;"><strong>Reference</strong></td><td>{{.Reference}}</td></tr>
      <tr><td style="padding: 6px 0;"><strong>Date</strong></td><td>{{.Date}}</td></tr>
      <tr><td style="padding: 6px 0;"><strong>Details</strong></td><td>{{.Detail}}</td></tr>
      <tr><td style="padding: 6px 0;"><strong>Party size</strong></td><td>{{.PartySize}}</td></tr>
    </table>
    <p>We look forward to hosting you!</p>
  </div>
  <div style="background: #f5f5f5; padding: 16px; text-align: center; font-size: 12px; color: #888;">
    {{.HotelName}} · This is an automated message, please do not reply.
  </div>
</body>
</html>
`
